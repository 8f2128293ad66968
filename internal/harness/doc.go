// Package harness provides conformance testing for the jump resolver.
//
// A scenario lists cases, each deriving one or two parameters from two
// tagged inputs. Every case is run through three paths that must agree:
//
//   - resolver: resolver.Solve, one call per output
//   - trajectory: trajectory.FromPair, deriving the full parameter set
//   - jump: a const .jump block evaluated by the compiler
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	numeric: f32
//	tolerance: 1e-6
//	cases:
//	  - name: peak
//	    inputs: { H: 20, T: 10 }
//	    outputs: [V, G]
//	    expect: { V: 4, G: -0.4 }
//	  - name: null_time
//	    inputs: { H: 20, T: 0 }
//	    outputs: [V]
//	    error: Time
//
// Kinds are spelled as in .jump sources (H, Height, T, Time, I, V, Impulse,
// G, Gravity). A case sets either expect or error.
//
// # Golden Files
//
// The trace of every path is recorded and can be compared against a golden
// file with RunWithGolden. Values are formatted with the shortest
// representation of the scenario width, so traces are stable across runs.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/table.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
