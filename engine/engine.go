// Package engine evaluates the small numeric expressions users type into
// form fields and fingerprints project state.
package engine

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"go.starlark.net/starlark"
)

// MaxSteps bounds the work a single expression may do.
const MaxSteps = 10000

// Hash returns a sha256 fingerprint of the JSON encoding of v.
func Hash(v interface{}) (string, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "hash")
	}
	hash := sha256.Sum256(jsonData)
	return fmt.Sprintf("%x", hash), nil
}

// EvalNumber evaluates a starlark expression such as "12*0.3048" or "3 + 1/2"
// and returns its value as a finite float64.
func EvalNumber(src string) (float64, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return 0, errors.New("empty expression")
	}

	thread := &starlark.Thread{Name: "field"}
	thread.SetMaxExecutionSteps(MaxSteps)
	v, err := starlark.Eval(thread, "field", src, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "evaluate %q", src)
	}

	f, ok := toFloat(v)
	if !ok {
		return 0, errors.Errorf("%q is a %s, not a number", src, v.Type())
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("%q is not a finite number", src)
	}
	return f, nil
}

func toFloat(v starlark.Value) (float64, bool) {
	switch val := v.(type) {
	case starlark.Int:
		i, ok := val.Int64()
		if !ok {
			return 0, false
		}
		return float64(i), true
	case starlark.Float:
		return float64(val), true
	}
	return 0, false
}
