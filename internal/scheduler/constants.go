package scheduler

const LogMsgTickSkipped = "Scheduled job skipped, worker queue full"
