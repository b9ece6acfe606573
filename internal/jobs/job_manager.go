package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	strandedConversionJob *StrandedConversionJob
}

func NewJobManager(strandedConversionJob *StrandedConversionJob) *JobManager {
	return &JobManager{
		strandedConversionJob: strandedConversionJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.strandedConversionJob.Start(); err != nil {
		return fmt.Errorf("failed to start stranded conversion job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running scans to finish.
func (jm *JobManager) StopAll() {
	jm.strandedConversionJob.Stop()
}
