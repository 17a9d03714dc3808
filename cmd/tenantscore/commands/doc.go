// Package commands defines the tenantscore CLI.
//
// Commands
//
//   - export   Convert a trainer dump into a portable model document
//   - score    Score one tenant with a model document
//   - inspect  Summarise the shape of one or more model documents
//   - verify   Check a document against the trainer's reference predictions
//   - sweep    Plot how the score responds to one feature
//
// # Implementation
//
// The root command loads configuration (YAML file plus TENANTSCORE_*
// environment overrides) and installs the zerolog provider before any
// subcommand runs. Subcommands write results to stdout and logs to stderr.
package commands
