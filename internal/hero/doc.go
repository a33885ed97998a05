// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package hero defines the superhero record decoded from the superhero API and
// normalizes the upstream "-" sentinel into explicit optional values.
package hero
