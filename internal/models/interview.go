package models

// Interview lifecycle statuses. The sweeper flips upcoming interviews to
// live once their start time passes; completed is only set by an explicit
// status or result update.
const (
	InterviewUpcoming  = "upcoming"
	InterviewLive      = "live"
	InterviewCompleted = "completed"
)

const (
	ResultPassed = "passed"
	ResultFailed = "failed"
)

// Interview is one scheduled interview with its video call reference.
type Interview struct {
	ID             string   `bson:"id" json:"id"`
	Title          string   `bson:"title" json:"title"`
	Description    string   `bson:"description,omitempty" json:"description,omitempty"`
	StartTime      int64    `bson:"startTime" json:"startTime"`
	EndTime        int64    `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Status         string   `bson:"status" json:"status"`
	StreamCallID   string   `bson:"streamCallId" json:"streamCallId"`
	CandidateID    string   `bson:"candidateId" json:"candidateId"`
	CandidateEmail string   `bson:"candidateEmail,omitempty" json:"candidateEmail,omitempty"`
	CandidateName  string   `bson:"candidateName,omitempty" json:"candidateName,omitempty"`
	InterviewerIDs []string `bson:"interviewerIds" json:"interviewerIds"`
	Result         string   `bson:"result,omitempty" json:"result,omitempty"`
	OverallRating  int      `bson:"overallRating,omitempty" json:"overallRating,omitempty"`
}

// Comment is one interviewer's feedback on an interview.
type Comment struct {
	ID            string `bson:"id" json:"id"`
	InterviewID   string `bson:"interviewId" json:"interviewId"`
	InterviewerID string `bson:"interviewerId" json:"interviewerId"`
	Content       string `bson:"content" json:"content"`
	Rating        int    `bson:"rating" json:"rating"`
	CreatedAt     int64  `bson:"createdAt" json:"createdAt"`
}

// InterviewWithComments backs the candidate dashboard view.
type InterviewWithComments struct {
	Interview
	Comments []Comment `json:"comments"`
}
