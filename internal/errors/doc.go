// Package errors provides coded, actionable errors for the create-webapp CLI.
//
// Every fatal condition the generator can hit has a registered code that maps
// to a category and a short message. Call sites attach the offending path, a
// longer explanation, a hint, and the underlying error:
//
//	err := errors.New("E111").
//	    WithPath("src/App.tsx").
//	    WithSuggestion("Check that the target directory is writable").
//	    Wrap(ioErr)
//
//	errors.PrintError(err)
//	// ERROR E111: Failed to write file
//	//
//	//   src/App.tsx
//	//
//	//   open /tmp/demo/src/App.tsx: permission denied
//	//
//	//   Hint: Check that the target directory is writable
//
// # Error Categories
//
//   - validation: bad command-line input (project name)
//   - filesystem: directory creation or file write failures
//   - template: manifest entries that cannot be resolved or read
//   - provision: required external tooling failed
//   - config: configuration file or environment problems
//
// CLIError implements Unwrap, so errors.Is and errors.As from the standard
// library see through it to the wrapped cause.
package errors
