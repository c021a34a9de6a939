// Package probe performs one HTTPS request and parse cycle against a single
// host and classifies the result.
//
// A Prober never returns an error: transport problems of any kind become
// model.StatusUnreachable and pages without the expected device table become
// model.StatusParseFailure. The cause is kept in model.Outcome.Err so the
// scanner can log it.
package probe
