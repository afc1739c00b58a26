// Package source switches the default JSON driver to goccy/go-json when
// imported for side effects.
package source

import (
	jsnore "github.com/lambdamechanic/jsnore"
	drvgojson "github.com/lambdamechanic/jsnore/source/gojson"
)

// init in a separate package to avoid import cycle in root. This sets go-json as default driver.
func init() { jsnore.SetJSONDriver(drvgojson.Driver()) }
