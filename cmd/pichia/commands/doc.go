// Package commands defines the pichia CLI.
//
// Commands
//
//   - analyze    Infer the expressed protein of pPICZ/pGAPZ plasmids
//   - translate  Resync and translate raw coding sequences
//   - titrate    Isoelectric point and titration curve of a protein
//
// # Configuration
//
// Settings come from flags, PICHIA_* environment variables, a .env file and
// an optional YAML file given by --config, in that order of precedence. Flags
// are bound to Viper keys when their command runs, so commands sharing a flag
// name do not clobber each other's binding.
package commands
