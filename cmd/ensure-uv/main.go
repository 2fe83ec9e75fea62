// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"go.astrophena.name/ensure-uv/internal/cli"
	"go.astrophena.name/ensure-uv/internal/ensureuv"
)

func main() { cli.Main(new(ensureuv.App)) }
