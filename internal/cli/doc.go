// Package cli holds the terminal presentation of the non-interactive modes:
// progress display, comparison tables, benchmark reports, the frame preview
// and shell completion scripts.
//
// # Naming Conventions
//
//   - Display* and Print* functions write formatted output to an [io.Writer].
//     Examples: [DisplayProgress], [DisplayMemoryStats], [PrintPreview].
//
//   - Generate* functions emit scripts. Example: [GenerateCompletion].
//
//   - Handle* functions report an error and return the process exit code.
//     Example: [HandleRenderError].
package cli
