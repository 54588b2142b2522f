package shaders

import (
	_ "embed"
)

//go:embed level.wgsl
var LevelWGSL string

//go:embed text.wgsl
var TextWGSL string
