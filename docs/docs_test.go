package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementSearchListsEveryCriterion(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]struct {
			Parameters []struct {
				Name string `json:"name"`
				In   string `json:"in"`
			} `json:"parameters"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	var names []string
	for _, p := range doc.Paths["/announcements/search"]["get"].Parameters {
		assert.Equal(t, "query", p.In, p.Name)
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{
		"startPrice", "endPrice", "startArea", "endArea",
		"phoneNumber", "type", "authorName", "authorSurname", "heatingType", "propertyName",
		"country", "city", "street",
		"parking", "balcony", "furnished", "airConditioning",
		"page", "size", "sort",
	}, names)
}
