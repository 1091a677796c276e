// Package report converts calculations to documents for output.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"sigs.k8s.io/yaml"

	"github.com/zephyrtronium/rpn"
)

// Report describes one calculation. Result is formatted text so that
// infinities and NaN survive JSON.
type Report struct {
	Input   string      `json:"input"`
	Tokens  []rpn.Token `json:"tokens"`
	Postfix []rpn.Token `json:"postfix"`
	Result  string      `json:"result,omitempty"`
	Error   string      `json:"error,omitempty"`
	Pos     int         `json:"pos,omitempty"`
}

// New creates a report from the outcome of rpn.Calculate.
func New(c *rpn.Calculation, err error) Report {
	r := Report{
		Input:   c.Input,
		Tokens:  c.Tokens,
		Postfix: c.Postfix,
	}
	if r.Tokens == nil {
		r.Tokens = []rpn.Token{}
	}
	if r.Postfix == nil {
		r.Postfix = []rpn.Token{}
	}
	if err != nil {
		r.Error = err.Error()
		var ie rpn.InputError
		if errors.As(err, &ie) {
			r.Pos = ie.Pos()
		}
		return r
	}
	r.Result = strconv.FormatFloat(c.Value, 'g', -1, 64)
	return r
}

// Failed returns whether the report describes a failed calculation.
func (r Report) Failed() bool {
	return r.Error != ""
}

// Marshal encodes the report as "json" or "yaml".
func (r Report) Marshal(format string) ([]byte, error) {
	switch format {
	case "json":
		return json.Marshal(r)
	case "yaml":
		return yaml.Marshal(r)
	default:
		return nil, fmt.Errorf("cannot marshal report as '%s'", format)
	}
}
