package app

// Message bus topics. Every topic carries a single domain.SubmissionEvent.
const TopicSubmissionSent = "submission:sent"
const TopicSubmissionRejected = "submission:rejected"
const TopicSubmissionFailed = "submission:failed"
