// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

// Package auth guards administrative endpoints with HS256 bearer tokens.
//
// Tokens carry a role claim; RequireAdmin accepts only tokens signed with the
// configured secret whose role is "admin". The service has no user accounts,
// so tokens are minted out of band with JWTManager.GenerateToken (or any
// HS256 tool holding the same secret).
package auth
