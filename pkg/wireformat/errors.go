// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package wireformat

import "errors"

// ErrDecodeFailed means all three decode attempts (outer container,
// Document, bare Note) failed against a canonical buffer. The caller treats
// this as "encrypted or malformed" — not a hard error.
var ErrDecodeFailed = errors.New("wireformat: all decode attempts failed")
