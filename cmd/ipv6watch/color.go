// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package main

import "github.com/muesli/termenv"

var (
	readyStyle          = termenv.Style{}.Foreground(termenv.ANSIGreen)
	partiallyReadyStyle = termenv.Style{}.Foreground(termenv.ANSIYellow)
	notReadyStyle       = termenv.Style{}.Foreground(termenv.ANSIRed)
)

var countryNameStyle = termenv.Style{}.Bold()
