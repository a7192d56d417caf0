// Copyright (c) 2024 Adam Wyatt
//
// This software is licensed under the MIT License.
// See the LICENSE file in the root of the repository for details.

package shared

import "SweetspotFinder/pkg/civiltime"

// TeeTimeSlot is a bookable start time in Swedish local time.
type TeeTimeSlot struct {
	Time           civiltime.ClockTime
	AvailableSpots int
}
