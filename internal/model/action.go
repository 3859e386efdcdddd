package model

// WizardModel identifies the host-owned wizard record type that the
// open-wizard action points clients at.
const WizardModel = "mi.modulo.wizard"

// WindowAction asks the host UI to open a view. It carries no business
// logic; the catalog only hands the descriptor back to the caller.
type WindowAction struct {
	TargetType  string `json:"target_type"`
	TargetModel string `json:"target_model"`
	Mode        string `json:"mode"`
	Display     string `json:"display"`
}

// OpenWizardAction builds the descriptor for the modal wizard form.
func OpenWizardAction() WindowAction {
	return WindowAction{
		TargetType:  "wizard",
		TargetModel: WizardModel,
		Mode:        "form",
		Display:     "modal",
	}
}
