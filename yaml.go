package jsnore

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads the first YAML document from r and converts it into the same
// JSON-like values LoadJSON produces. Mapping keys are taken as their scalar
// text, ints and finite floats become numbers per NumberMode, and any other
// tagged scalar (timestamps, binary, .inf) is kept as its text.
func LoadYAML(r io.Reader, opts ...LoadOpt) (any, error) {
	opt := lastLoadOpt(opts)
	data, err := readLimited(r, opt.MaxBytes)
	if err != nil {
		return nil, err
	}
	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, issueAt("/", CodeParseError, "empty input", err)
		}
		return nil, issueAt("/", CodeParseError, err.Error(), err)
	}
	c := yamlConverter{opt: opt}
	return c.convert(&root, "", 0)
}

type yamlConverter struct {
	opt LoadOpt
}

func (c *yamlConverter) convert(n *yaml.Node, path string, depth int) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0], path, depth)
	case yaml.AliasNode:
		return c.convert(n.Alias, path, depth)
	case yaml.MappingNode, yaml.SequenceNode:
		if c.opt.MaxDepth > 0 && depth+1 > c.opt.MaxDepth {
			return nil, issueAt(pointerOrRoot(path), CodeParseError, "max depth exceeded", nil)
		}
	}

	switch n.Kind {
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			kp := path + "/" + pointerEscaper.Replace(key)
			if _, dup := m[key]; dup {
				it := Issue{Path: kp, Code: CodeDuplicateKey, Message: "key '" + key + "' duplicated", Offset: -1,
					Params: map[string]any{"line": n.Content[i].Line, "column": n.Content[i].Column}}
				switch c.opt.Strictness.OnDuplicateKey {
				case Error:
					return nil, Issues{it}
				case Warn:
					if c.opt.OnIssue != nil {
						c.opt.OnIssue(it)
					}
				}
			}
			v, err := c.convert(n.Content[i+1], kp, depth+1)
			if err != nil {
				return nil, err
			}
			m[key] = v
		}
		return m, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for i, child := range n.Content {
			v, err := c.convert(child, path+"/"+strconv.Itoa(i), depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return c.scalar(n), nil
	default:
		return nil, nil
	}
}

func (c *yamlConverter) scalar(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		if b, err := strconv.ParseBool(n.Value); err == nil {
			return b
		}
	case "!!int":
		if i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64); err == nil {
			if c.opt.NumberMode == NumberFloat64 {
				return float64(i)
			}
			return json.Number(strconv.FormatInt(i, 10))
		}
	case "!!float":
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			if c.opt.NumberMode == NumberFloat64 {
				return f
			}
			return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
		}
	}
	return n.Value
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
