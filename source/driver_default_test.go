package source_test

import (
	"testing"

	jsnore "github.com/lambdamechanic/jsnore"
	_ "github.com/lambdamechanic/jsnore/source"
)

func TestImportSetsGoJSONDriver(t *testing.T) {
	if got := jsnore.CurrentJSONDriver().Name(); got != "go-json" {
		t.Fatalf("driver = %q, want go-json", got)
	}
	v, err := jsnore.LoadJSONBytes([]byte(`{"k":[1,2]}`))
	if err != nil {
		t.Fatalf("LoadJSONBytes: %v", err)
	}
	if _, ok := v.(map[string]any)["k"].([]any); !ok {
		t.Fatalf("unexpected value %#v", v)
	}
}
