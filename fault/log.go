// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"

	"github.com/bitmark-inc/logger"
)

// Panicf - write a critical message to the log then panic with the
// same text
func Panicf(format string, arguments ...interface{}) {
	message := fmt.Sprintf(format, arguments...)
	logger.Critical(message)
	logger.Finalise()
	panic(message)
}

// PanicIfError - panic if err is not nil, prefixing the message
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	Panicf("%s failed with error: %s", message, err)
}
