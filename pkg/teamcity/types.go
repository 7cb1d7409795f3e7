package teamcity

// Build represents one execution record of a build configuration. List
// endpoints return a summary subset of the fields; Get returns the full
// representation.
type Build struct {
	ID            int64  `json:"id"`
	BuildTypeID   string `json:"buildTypeId,omitempty"`
	Number        string `json:"number,omitempty"`
	Status        string `json:"status,omitempty"`
	State         string `json:"state,omitempty"`
	BranchName    string `json:"branchName,omitempty"`
	DefaultBranch bool   `json:"defaultBranch,omitempty"`
	Personal      bool   `json:"personal,omitempty"`
	Composite     bool   `json:"composite,omitempty"`
	FailedToStart bool   `json:"failedToStart,omitempty"`
	Pinned        bool   `json:"pinned,omitempty"`
	History       bool   `json:"history,omitempty"`
	StatusText    string `json:"statusText,omitempty"`
	Href          string `json:"href,omitempty"`
	WebURL        string `json:"webUrl,omitempty"`

	// Dates use the server's compact format, e.g. 20240801T120000+0000.
	QueuedDate string `json:"queuedDate,omitempty"`
	StartDate  string `json:"startDate,omitempty"`
	FinishDate string `json:"finishDate,omitempty"`

	// Queue-only fields.
	WaitReason    string `json:"waitReason,omitempty"`
	QueuePosition int    `json:"queuePosition,omitempty"`

	BuildType    *BuildType     `json:"buildType,omitempty"`
	Agent        *Agent         `json:"agent,omitempty"`
	Triggered    *TriggeredInfo `json:"triggered,omitempty"`
	CanceledInfo *Comment       `json:"canceledInfo,omitempty"`
	Comment      *Comment       `json:"comment,omitempty"`
	Properties   *Properties    `json:"properties,omitempty"`
	LastChanges  *ChangeList    `json:"lastChanges,omitempty"`
}

// BuildList is the wire shape of build collection responses.
type BuildList struct {
	Count  int     `json:"count,omitempty"`
	Href   string  `json:"href,omitempty"`
	Builds []Build `json:"build,omitempty"`
}

// BuildType represents a build configuration.
type BuildType struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	ProjectID   string `json:"projectId,omitempty"`
	ProjectName string `json:"projectName,omitempty"`
	Paused      bool   `json:"paused,omitempty"`
	Href        string `json:"href,omitempty"`
	WebURL      string `json:"webUrl,omitempty"`

	Steps      *StepList   `json:"steps,omitempty"`
	Parameters *Properties `json:"parameters,omitempty"`
}

// BuildTypeList is the wire shape of build configuration collections.
type BuildTypeList struct {
	Count      int         `json:"count,omitempty"`
	BuildTypes []BuildType `json:"buildType,omitempty"`
}

// Project represents a project.
type Project struct {
	ID              string `json:"id"`
	Name            string `json:"name,omitempty"`
	Description     string `json:"description,omitempty"`
	ParentProjectID string `json:"parentProjectId,omitempty"`
	Archived        bool   `json:"archived,omitempty"`
	Href            string `json:"href,omitempty"`
	WebURL          string `json:"webUrl,omitempty"`

	BuildTypes *BuildTypeList `json:"buildTypes,omitempty"`
}

// ProjectList is the wire shape of project collections.
type ProjectList struct {
	Count    int       `json:"count,omitempty"`
	Projects []Project `json:"project,omitempty"`
}

// Step represents one build step of a build configuration.
type Step struct {
	ID         string      `json:"id"`
	Name       string      `json:"name,omitempty"`
	Type       string      `json:"type,omitempty"`
	Disabled   bool        `json:"disabled,omitempty"`
	Properties *Properties `json:"properties,omitempty"`
}

// StepList is the wire shape of step collections.
type StepList struct {
	Count int    `json:"count,omitempty"`
	Steps []Step `json:"step,omitempty"`
}

// Property is a single name/value parameter.
type Property struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Inherited bool   `json:"inherited,omitempty"`
}

// Properties is the wire shape of parameter collections.
type Properties struct {
	Count      int        `json:"count,omitempty"`
	Properties []Property `json:"property,omitempty"`
}

// Value returns the value of the named property and whether it was present.
func (p *Properties) Value(name string) (string, bool) {
	if p == nil {
		return "", false
	}

	for _, prop := range p.Properties {
		if prop.Name == name {
			return prop.Value, true
		}
	}

	return "", false
}

// User represents a server user.
type User struct {
	ID        int64  `json:"id,omitempty"`
	Username  string `json:"username,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	LastLogin string `json:"lastLogin,omitempty"`
	Href      string `json:"href,omitempty"`
}

// UserList is the wire shape of user collections.
type UserList struct {
	Count int    `json:"count,omitempty"`
	Users []User `json:"user,omitempty"`
}

// Agent represents a build agent.
type Agent struct {
	ID         int64      `json:"id,omitempty"`
	Name       string     `json:"name,omitempty"`
	TypeID     int64      `json:"typeId,omitempty"`
	Connected  bool       `json:"connected,omitempty"`
	Enabled    bool       `json:"enabled,omitempty"`
	Authorized bool       `json:"authorized,omitempty"`
	Href       string     `json:"href,omitempty"`
	WebURL     string     `json:"webUrl,omitempty"`
	Pool       *AgentPool `json:"pool,omitempty"`
}

// AgentPool represents an agent pool.
type AgentPool struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// AgentList is the wire shape of agent collections.
type AgentList struct {
	Count  int     `json:"count,omitempty"`
	Agents []Agent `json:"agent,omitempty"`
}

// Change represents a VCS change known to the server.
type Change struct {
	ID       int64  `json:"id,omitempty"`
	Version  string `json:"version,omitempty"`
	Username string `json:"username,omitempty"`
	Date     string `json:"date,omitempty"`
	Comment  string `json:"comment,omitempty"`
	Href     string `json:"href,omitempty"`
	WebURL   string `json:"webUrl,omitempty"`
	User     *User  `json:"user,omitempty"`
}

// ChangeList is the wire shape of change collections.
type ChangeList struct {
	Count   int      `json:"count,omitempty"`
	Changes []Change `json:"change,omitempty"`
}

// Comment carries a user-supplied text such as a cancel reason.
type Comment struct {
	Text      string `json:"text,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	User      *User  `json:"user,omitempty"`
}

// TriggeredInfo describes what caused a build to be queued.
type TriggeredInfo struct {
	Type        string     `json:"type,omitempty"`
	Date        string     `json:"date,omitempty"`
	DisplayText string     `json:"displayText,omitempty"`
	User        *User      `json:"user,omitempty"`
	BuildType   *BuildType `json:"buildType,omitempty"`
}

// File represents one artifact entry of a build.
type File struct {
	Name             string `json:"name"`
	Size             int64  `json:"size,omitempty"`
	ModificationTime string `json:"modificationTime,omitempty"`
	Href             string `json:"href,omitempty"`
	Content          *Href  `json:"content,omitempty"`
	Children         *Href  `json:"children,omitempty"`
}

// FileList is the wire shape of artifact listings.
type FileList struct {
	Count int    `json:"count,omitempty"`
	Files []File `json:"file,omitempty"`
}

// Href is a bare link to another resource.
type Href struct {
	Href string `json:"href"`
}

// ServerInfo describes the server itself.
type ServerInfo struct {
	Version      string `json:"version,omitempty"`
	VersionMajor int    `json:"versionMajor,omitempty"`
	VersionMinor int    `json:"versionMinor,omitempty"`
	BuildNumber  string `json:"buildNumber,omitempty"`
	StartTime    string `json:"startTime,omitempty"`
	CurrentTime  string `json:"currentTime,omitempty"`
	WebURL       string `json:"webUrl,omitempty"`
}

// BuildTypeLocator addresses a build configuration in request bodies.
type BuildTypeLocator struct {
	ID string `json:"id"`
}

// TriggerRequest is the body of a queue-build request.
type TriggerRequest struct {
	BuildType  BuildTypeLocator `json:"buildType"`
	BranchName string           `json:"branchName,omitempty"`
	Comment    *Comment         `json:"comment,omitempty"`
	Properties *Properties      `json:"properties,omitempty"`
	Personal   bool             `json:"personal,omitempty"`
}

// CancelRequest is the body of a cancel-build request.
type CancelRequest struct {
	Comment        string `json:"comment,omitempty"`
	ReaddIntoQueue bool   `json:"readdIntoQueue,omitempty"`
}

// BuildListOptions narrows build list calls.
type BuildListOptions struct {
	// BuildTypeID restricts the listing to one build configuration.
	BuildTypeID string
	// Count caps the number of results. Zero applies the endpoint default.
	Count int
	// Details fetches the full representation of every listed build with
	// an extra Get per entry.
	Details bool
}
