// Package mock provides test doubles for the inference package.
//
// The mock Invoker writes configured page markdown into the request's
// work directory, so pipeline and consolidation tests can run without a
// real recognition backend.
package mock
