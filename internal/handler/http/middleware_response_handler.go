// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package http

import "net/http"

// responseWriter records the status code and body size while the response is
// being written. The access log and the latency histogram read both after the
// downstream handler returns.
//
// WriteHeader forwards at most once; repeat calls are dropped, matching the
// http.ResponseWriter contract.
type responseWriter struct {
	http.ResponseWriter

	status      int
	size        int
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write counts the bytes actually accepted by the underlying writer. A Write
// without a prior WriteHeader records the implicit 200 the standard library
// would send.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}
