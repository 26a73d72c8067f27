// Package docs registers the warehouse OpenAPI document with swag so that
// echo-swagger can serve it at /swagger/doc.json next to the UI.
package docs

import (
	"encoding/json"
	"sync"

	"github.com/swaggo/swag"

	"warehouse/internal/generated/servers"
)

// Document renders the embedded OpenAPI document as JSON once and serves it
// from ReadDoc.
type Document struct {
	once sync.Once
	doc  string
}

// ReadDoc implements swag.Swagger.
func (d *Document) ReadDoc() string {
	d.once.Do(func() {
		swagger, err := servers.GetSwagger()
		if err != nil {
			d.doc = "{}"
			return
		}
		raw, err := json.Marshal(swagger)
		if err != nil {
			d.doc = "{}"
			return
		}
		d.doc = string(raw)
	})
	return d.doc
}

func init() {
	swag.Register(swag.Name, &Document{})
}
