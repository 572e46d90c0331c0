package match

import (
	"regexp"
	"strconv"
	"strings"
)

// knownMetadataKeys are the keys merchants commonly use to store the
// platform order number in gateway transaction metadata.
var knownMetadataKeys = []string{
	"order_number",
	"shopify_order",
	"shopify_order_number",
	"shopify_order_id",
	"pedido",
	"numero_pedido",
	"order_name",
	"shopify_name",
	"external_order_id",
	"external_id",
	"reference",
	"ref",
}

// orderNumberPattern matches exactly an optional '#' followed by 3-7
// digits, anchored at both ends. The restriction is deliberate: an
// unanchored scan over arbitrary merchant metadata would match phone
// numbers, postal codes and tax IDs.
var orderNumberPattern = regexp.MustCompile(`^#?(\d{3,7})$`)

// ExtractOrderNumber tries to pull a platform order number out of
// free-form gateway metadata. Known keys win over the generic scan; the
// generic scan only accepts values that look exactly like an order
// number. Returns "" when nothing usable is found.
func ExtractOrderNumber(metadata map[string]any) string {
	if metadata == nil {
		return ""
	}

	for _, key := range knownMetadataKeys {
		switch v := metadata[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64: // JSON numbers decode as float64
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		}
	}

	for _, v := range metadata {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if m := orderNumberPattern.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}

	return ""
}
