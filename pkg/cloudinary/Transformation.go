package cloudinary

import (
	"fmt"
	"sort"
	"strings"
)

/*
Transformation is one component of a delivery URL transformation. Parameters
are rendered sorted by name, so {Width: 220, Height: 140} becomes "h_140,w_220".
*/
type Transformation struct {
	Width   int
	Height  int
	Crop    string
	Quality string
}

func (t Transformation) String() string {
	params := []string{}

	if t.Crop != "" {
		params = append(params, "c_"+t.Crop)
	}

	if t.Height > 0 {
		params = append(params, fmt.Sprintf("h_%d", t.Height))
	}

	if t.Quality != "" {
		params = append(params, "q_"+t.Quality)
	}

	if t.Width > 0 {
		params = append(params, fmt.Sprintf("w_%d", t.Width))
	}

	sort.Strings(params)
	return strings.Join(params, ",")
}

// chain joins transformations into the raw form the SDK expects, "a/b".
func chain(transformations []Transformation) string {
	parts := []string{}

	for _, t := range transformations {
		if s := t.String(); s != "" {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, "/")
}
