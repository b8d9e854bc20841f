// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package origin

import (
	"time"
)

// SetClock - replace the verifier's time source
func (v *Verifier) SetClock(now func() time.Time) {
	v.now = now
}
