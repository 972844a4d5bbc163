package cli

import (
	"fmt"
	"io"

	"github.com/absurdfarce/extplan"
)

// reportHost writes the upfront host-incompatibility banners. These are
// informational only; eligibility is already settled by the resolver.
func reportHost(w io.Writer, caps extplan.Capabilities) {
	if caps.AlternateRuntime {
		fmt.Fprint(w, extplan.AlternateRuntimeMsg)
	}
	if !caps.SupportedPlatform {
		fmt.Fprint(w, extplan.PlatformUnsupportedMsg)
	} else if !caps.SupportedByteOrder {
		fmt.Fprint(w, extplan.ByteOrderUnsupportedMsg)
	}
}

// reportDegradation prints toolchain help for every stage that was
// attempted but degraded, so users know how to get the missing
// acceleration back.
func reportDegradation(w io.Writer, caps extplan.Capabilities, plan *extplan.Plan) {
	msg := extplan.UnixCompileHelpMsg
	if caps.Windows {
		msg = extplan.WindowsCompileHelpMsg
	}
	for _, stage := range plan.Stages {
		if stage.Status == extplan.StageDegraded {
			fmt.Fprintf(w, msg, stage.Name)
		}
	}
}
