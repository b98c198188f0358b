// Copyright 2010-2024 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lsp

// RemainingDemand returns, for every period t, the total demand from t to the end of the
// horizon. It is the big-M of the linking constraint y_t <= M_t z_t: no plan needs to produce
// more than the demand still to come. The bound is exact as long as surplus stock never pays,
// which LSP1Instance.Validate enforces for negative production costs.
func RemainingDemand(req []float64) []float64 {
	m := make([]float64, len(req))
	sum := 0.0
	for t := len(req) - 1; t >= 0; t-- {
		sum += req[t]
		m[t] = sum
	}
	return m
}
