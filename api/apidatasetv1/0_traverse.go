package apidatasetv1

import (
	"encoding/json"
	"fmt"

	"github.com/SierraSoftworks/connor"

	"github.com/fulldump/farmgrid/collection"
)

// selection picks rows either by a unique index value or by scanning with a
// document filter.
type selection struct {
	Index  string         `json:"index"`
	Value  string         `json:"value"`
	Filter map[string]any `json:"filter"`
	Skip   int            `json:"skip"`
	Limit  int            `json:"limit"`
}

func parseSelection(input []byte) (*selection, error) {

	params := &selection{
		Limit: 1,
	}
	err := json.Unmarshal(input, params)
	if err != nil {
		return nil, err
	}

	return params, nil
}

// selectRows collects the selected rows first so callers can modify the
// collection afterwards. A negative limit selects every match.
func selectRows(params *selection, col *collection.Collection) ([]*collection.Row, error) {

	if params.Index != "" {
		row, err := col.FindBy(params.Index, params.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadRequest, err.Error())
		}
		return []*collection.Row{row}, nil
	}

	result := []*collection.Row{}
	if params.Limit == 0 {
		return result, nil
	}

	hasFilter := len(params.Filter) > 0
	skip := params.Skip

	var err error
	col.Traverse(func(row *collection.Row) bool {

		if hasFilter {
			rowData := map[string]any{}
			json.Unmarshal(row.Payload, &rowData)

			match, matchErr := connor.Match(params.Filter, rowData)
			if matchErr != nil {
				err = fmt.Errorf("%w: match: %s", ErrBadRequest, matchErr.Error())
				return false
			}
			if !match {
				return true
			}
		}

		if skip > 0 {
			skip--
			return true
		}

		result = append(result, row)

		return params.Limit < 0 || len(result) < params.Limit
	})

	return result, err
}
