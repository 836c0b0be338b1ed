// Package layer implements the python dependency layer script generator.
//
// It has two halves: a Config store holding the user's current selections
// (python runtime version, packaging strategy, dependency list, archive base
// name), and a pure Generate function that maps a Config snapshot to the
// text of a POSIX shell script. The script, when run by a human elsewhere,
// builds an isolated environment, installs the dependencies, and packages
// them into a zip archive suitable for deployment as a layer.
//
// # Validation Boundary
//
// All validation happens at the Config store: SelectRuntimeVersion and
// SelectStrategy reject unknown values with ErrInvalidVersion and
// ErrInvalidStrategy before they can reach the generator. Generate is
// therefore total over its input domain and has no error return.
//
// # Change Notification
//
// Every successful Config update synchronously invokes the registered
// subscriber with a fresh snapshot. There is no batching or debouncing:
// generation is pure and cheap, so regenerating on every keystroke keeps
// the displayed script always consistent with the committed configuration.
//
// # Usage Example
//
//	cfg := layer.NewConfig()
//	cfg.Subscribe(func(s layer.Snapshot) {
//	    art := layer.Generate(s)
//	    fmt.Println(art.Text)
//	})
//	if err := cfg.SelectRuntimeVersion("3.11"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// Config is driven by a single UI loop and is not safe for concurrent use.
package layer
