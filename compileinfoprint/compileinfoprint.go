// compileinfoprint is imported for the side effect of printing the compileinfo
// to os.StdErr
package compileinfoprint

import "github.com/cBioPortal/CPTAC-proteomics-pipeline/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
