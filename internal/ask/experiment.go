package ask

import "hash/fnv"

// ModelExperiment is the assignment key for the binary model experiment.
const ModelExperiment = "ask_model"

const (
	VariantControl   = "control"
	VariantTreatment = "treatment"
)

// AssignVariant buckets a session into one of the two experiment arms.
// Assignment is deterministic per (session, experiment) pair, so a session
// keeps its arm across submissions without any stored state.
func AssignVariant(sessionID string, experiment string) string {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	h.Write([]byte(":"))
	h.Write([]byte(experiment))
	if h.Sum32()%2 == 0 {
		return VariantControl
	}
	return VariantTreatment
}
