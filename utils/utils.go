package utils

import (
	"reflect"
	"strings"
)

// GetCols returns the db columns of a struct based on its db tags, for use in
// SELECT column lists alongside pgxscan.
func GetCols(s any) []string {
	refType := reflect.TypeOf(s)

	var cols []string

	for _, f := range reflect.VisibleFields(refType) {
		db := f.Tag.Get("db")

		if db == "-" || db == "" {
			continue
		}

		// Skip computed fields
		if strings.Contains(db, ",") {
			db = strings.Split(db, ",")[0]
		}

		cols = append(cols, db)
	}

	return cols
}
