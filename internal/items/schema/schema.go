// Package schema embeds the JSON schema of item records used by strict decoding.
package schema

import _ "embed"

//go:embed item.schema.json
var Item []byte

// ItemURL is the $id of Item.
const ItemURL = "https://arena.zeusync.dev/schemas/item.schema.json"
