package service

import (
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/sanchezegido/recipedia/internal/cache"
)

// Renderer serialises representations for each supported media type
type Renderer interface {
	Render(v interface{}, media cache.MediaType) ([]byte, error)
}

// BodyRenderer renders JSON with encoding/json and XML with encoding/xml
type BodyRenderer struct{}

func (BodyRenderer) Render(v interface{}, media cache.MediaType) ([]byte, error) {
	switch media {
	case cache.MediaJSON:
		return json.Marshal(v)
	case cache.MediaXML:
		body, err := xml.Marshal(v)
		if err != nil {
			return nil, err
		}
		return append([]byte(xml.Header), body...), nil
	default:
		return nil, fmt.Errorf("no renderer for media type %q", media)
	}
}
