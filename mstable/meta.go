package mstable

import (
	"fmt"
	"path/filepath"
)

const metaTemplate = `cancer_study_identifier: %s
genetic_alteration_type: PROTEIN_LEVEL
datatype: Z-SCORE
stable_id: protein_quantification
profile_description: Protein Quantification (Mass Spec)
show_profile_in_analysis_tab: true
profile_name: Protein levels (mass spectrometry by CPTAC)
data_filename: %s`

// Meta renders the cBioPortal metadata sidecar describing a written data
// file. Only the basename of dataFile is referenced, since the sidecar
// sits next to the data file it describes.
func Meta(cancerStudyID, dataFile string) string {
	return fmt.Sprintf(metaTemplate, cancerStudyID, filepath.Base(dataFile))
}
