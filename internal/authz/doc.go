// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

// Package authz provides role-based authorization using Casbin.
//
// Requests flow through authentication first:
//
//	Request -> auth.Middleware -> authz.Middleware -> Handler
//
// # Model
//
//	[request_definition]
//	r = sub, obj, act
//
//	[policy_definition]
//	p = sub, obj, act
//
//	[role_definition]
//	g = _, _
//
//	[policy_effect]
//	e = some(where (p.eft == allow))
//
//	[matchers]
//	m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
//
// Objects are request paths and actions are derived from the HTTP method
// (read, write, delete). The embedded policy grants the user role the
// signed-in endpoints and the admin role everything under /api/admin/.
// admin inherits user.
//
// A deployment can replace the embedded model and policy with files via
// EnforcerConfig.
package authz
