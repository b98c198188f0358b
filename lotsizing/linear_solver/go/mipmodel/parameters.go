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

package mipmodel

import "time"

// Parameters controls a solve. Unset fields keep the solver defaults.
//
// Use it like this:
//
//	params := &Parameters{
//		MaxTimeInSeconds: proto.Float64(10),
//		RelativeGap:      proto.Float64(1e-6),
//	}
type Parameters struct {
	// MaxTimeInSeconds is the wall-clock limit of the search.
	MaxTimeInSeconds *float64
	// RelativeGap stops the search once the relative optimality gap is below this value.
	RelativeGap *float64
	// NumWorkers is the number of solver threads.
	NumWorkers *int32
	// LogSearchProgress enables the solver's own log on stdout.
	LogSearchProgress *bool
}

// GetMaxTimeInSeconds returns the time limit, or 0 if unset.
func (p *Parameters) GetMaxTimeInSeconds() float64 {
	if p == nil || p.MaxTimeInSeconds == nil {
		return 0
	}
	return *p.MaxTimeInSeconds
}

// GetRelativeGap returns the relative gap, or 0 if unset.
func (p *Parameters) GetRelativeGap() float64 {
	if p == nil || p.RelativeGap == nil {
		return 0
	}
	return *p.RelativeGap
}

// GetNumWorkers returns the number of workers, or 0 if unset.
func (p *Parameters) GetNumWorkers() int32 {
	if p == nil || p.NumWorkers == nil {
		return 0
	}
	return *p.NumWorkers
}

// GetLogSearchProgress returns whether the solver log is enabled.
func (p *Parameters) GetLogSearchProgress() bool {
	if p == nil || p.LogSearchProgress == nil {
		return false
	}
	return *p.LogSearchProgress
}

// TimeLimit returns the time limit as a duration, or 0 if unset.
func (p *Parameters) TimeLimit() time.Duration {
	return time.Duration(p.GetMaxTimeInSeconds() * float64(time.Second))
}
