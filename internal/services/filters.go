package services

import (
	"strconv"
	"strings"
)

// RecipeFilters narrows a recipe listing. A recipe matches when it carries
// at least one of the given tag ids and at least one of the given ingredient
// ids; an empty slice imposes no constraint.
type RecipeFilters struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// ParseIDList parses a comma-separated list of integer ids as used by the
// list endpoint's tags/ingredients query parameters. Tokens are trimmed and
// malformed ones are skipped rather than rejected.
func ParseIDList(raw string) []uint {
	if raw == "" {
		return nil
	}

	var ids []uint
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		id, err := strconv.ParseUint(token, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}
