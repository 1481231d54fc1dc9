/*
Copyright 2024 The SUNET Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package util collects the small naming and formatting helpers shared by
// the resource and registry packages.
package util

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	nonAlphaNumericHyphen = regexp.MustCompile(`[^a-z0-9-]`)
	repeatedHyphens       = regexp.MustCompile(`-+`)
)

// Sanitise converts a project name into a safe remote resource name:
// dots and underscores become hyphens, the result is lowercased, runs of
// invalid characters are dropped, and repeated hyphens collapse to one.
func Sanitise(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, "_", "-")
	s = nonAlphaNumericHyphen.ReplaceAllString(s, "")
	s = repeatedHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// MakeGroupName derives the keystone group name that holds a project's
// role-bound users.
func MakeGroupName(projectName string) string {
	return Sanitise(projectName) + "-users"
}

// IsValidUUID reports whether value parses as a UUID. The Project
// reconciler uses this to detect a status groupId that was actually stored
// as a name by an older reconciler version, and self-heal it.
func IsValidUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

// Truncate shortens s to at most n runes. The reconcilers use it to cap
// error text written into condition messages.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// NowRFC3339 returns the current UTC time formatted for a status field.
func NowRFC3339(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}
