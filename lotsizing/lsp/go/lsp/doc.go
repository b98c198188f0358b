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

// Package lsp formulates uncapacitated lot-sizing problems as mixed-integer linear programs
// and solves them with a time-limited MIP solver.
//
// Three variants are provided:
//
//   - LSP1 (ULSP_TVP): one product with period-dependent unit production costs.
//   - LSP2 (ULSP_NCS): one product, no production in two consecutive periods.
//   - LSP3 (UMLSP): two products sharing one machine, at most one product per period.
//
// Every variant uses production quantities y_t >= 0, setup indicators z_t in {0,1} and
// end-of-period inventories I_t >= 0 linked by the balance I_t = I_{t-1} + y_t - R_t, with
// I_0 fixed to the initial inventory. Production is only possible in setup periods:
// y_t <= M_t z_t, where M_t is the demand remaining from period t to the horizon.
//
// Each call builds a fresh model and keeps no state, so calls may run concurrently.
package lsp
