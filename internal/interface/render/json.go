package render

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// JSON は正しいJSONを整形する. 不正なJSONは注記付きでそのまま返す.
func JSON(body []byte) string {
	if !gjson.ValidBytes(body) {
		return "(invalid JSON, showing raw body)\n" + strings.TrimRight(string(body), "\n")
	}
	return strings.TrimRight(string(pretty.PrettyOptions(body, prettyOptions)), "\n")
}
