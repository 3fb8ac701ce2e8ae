// Copyright 2025 Poiesic Systems
//
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


package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when a username or password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is returned when a user lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidAccount is returned when an account definition is malformed.
	ErrInvalidAccount = errors.New("invalid account")

	// ErrDuplicateAccount is returned when two accounts share a username.
	ErrDuplicateAccount = errors.New("duplicate account")
)
