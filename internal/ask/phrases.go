package ask

// Phrases rotate in the editor while a generation is pending.
var Phrases = [8]string{
	"Reading your input data...",
	"Sketching a first version...",
	"Checking the field types...",
	"Handling the edge cases...",
	"Naming things properly...",
	"Running a quick sanity check...",
	"Polishing the code...",
	"Almost there...",
}
