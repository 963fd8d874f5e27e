package app

import (
	"log"
	"mime"
)

// The embedded stylesheet is served through http.FileServer, which falls
// back to the system MIME table; minimal containers often ship without one.
func init() {
	if mime.TypeByExtension(".css") != "" {
		return
	}
	if err := mime.AddExtensionType(".css", "text/css; charset=utf-8"); err != nil {
		log.Printf("app: register css mime type: %v", err)
	}
}
