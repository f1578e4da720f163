/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package main

import (
	"github.com/mpetrenko/taphouse/cmd/taphouse"
)

func main() {
	taphouse.Execute()
}
