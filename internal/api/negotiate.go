package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/munnerz/goautoneg"

	"github.com/sanchezegido/recipedia/internal/cache"
	"github.com/sanchezegido/recipedia/internal/service"
)

// offer is a media range the API can produce, in server preference order
type offer struct {
	typ, subtype string
	media        cache.MediaType
}

var offers = []offer{
	{"application", "json", cache.MediaJSON},
	{"application", "xml", cache.MediaXML},
	{"text", "xml", cache.MediaXML},
}

var contentTypes = map[cache.MediaType]string{
	cache.MediaJSON: "application/json; charset=utf-8",
	cache.MediaXML:  "application/xml; charset=utf-8",
}

// negotiate picks the representation from the Accept header. A missing
// header selects JSON; q=0 excludes a type.
func negotiate(c *gin.Context) (cache.MediaType, bool) {
	return negotiateAccept(c.GetHeader("Accept"))
}

// negotiateAccept weighs every offer by its most specific matching clause.
// The heaviest wins; equal weights go to the clause listed first, then to
// the server's order.
func negotiateAccept(header string) (cache.MediaType, bool) {
	if strings.TrimSpace(header) == "" {
		return cache.MediaJSON, true
	}
	clauses := parseAccept(header)

	var (
		best      cache.MediaType
		bestQ     float64
		bestIndex int
	)
	for _, o := range offers {
		q, index, ok := weigh(clauses, o)
		if !ok || q <= 0 {
			continue
		}
		if best == "" || q > bestQ || (q == bestQ && index < bestIndex) {
			best, bestQ, bestIndex = o.media, q, index
		}
	}
	return best, best != ""
}

// parseAccept keeps the clauses in header order
func parseAccept(header string) []goautoneg.Accept {
	var clauses []goautoneg.Accept
	for _, part := range strings.Split(header, ",") {
		for _, a := range goautoneg.ParseAccept(part) {
			a.Type = strings.ToLower(a.Type)
			a.SubType = strings.ToLower(a.SubType)
			clauses = append(clauses, a)
		}
	}
	return clauses
}

// weigh returns the q and position of the most specific clause matching o
func weigh(clauses []goautoneg.Accept, o offer) (float64, int, bool) {
	specificity, q, index := -1, 0.0, 0
	for i, a := range clauses {
		s := -1
		switch {
		case a.Type == o.typ && a.SubType == o.subtype:
			s = 2
		case a.Type == o.typ && a.SubType == "*":
			s = 1
		case a.Type == "*" && a.SubType == "*":
			s = 0
		}
		if s > specificity {
			specificity, q, index = s, a.Q, i
		}
	}
	return q, index, specificity >= 0
}

// UseJSONFieldNames makes gin's validator report fields by their json names
func UseJSONFieldNames() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(service.JSONFieldName)
	}
}
