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

package openstack

import (
	"net/http"

	"github.com/gophercloud/gophercloud/v2"
)

// IsNotFound reports whether err is (or wraps) a 404 response from the
// remote, the condition under which finder functions return a nil result
// instead of an error.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return gophercloud.ResponseCodeIs(err, http.StatusNotFound)
}

// IsConflict reports whether err is (or wraps) a 409 response, the
// condition ensure operations treat as "already exists" rather than a
// failure.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	return gophercloud.ResponseCodeIs(err, http.StatusConflict)
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if IsNotFound(err) || IsConflict(err) {
		return err
	}
	return retryable(err)
}
