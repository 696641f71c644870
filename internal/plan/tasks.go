package plan

var (
	setupTasks = []string{
		"Set up development environment and required tools",
		"Review and validate project requirements with stakeholders",
	}
	dataAcquisitionTasks = []string{
		"Initiate data collection and acquisition process",
		"Establish data quality metrics and validation criteria",
		"Begin data cleaning and preparation pipeline",
	}
	dataAnalysisTasks = []string{
		"Analyze existing datasets and validate data quality",
		"Set up data pipeline and preprocessing workflows",
	}
	feasibilityTasks = []string{
		"Conduct technical feasibility study and risk assessment",
		"Create proof-of-concept for highest-risk components",
		"Document all technical assumptions and constraints",
	}
	prototypeTasks = []string{
		"Design system architecture and component structure",
		"Develop initial prototype/MVP with core functionality",
		"Set up monitoring and logging infrastructure",
		"Conduct first checkpoint review with stakeholders",
	}
)

var (
	refinementTasks = []string{
		"Refine and enhance core features based on initial feedback",
		"Implement comprehensive error handling and validation",
	}
	dataValidationTasks = []string{
		"Complete data labeling and annotation (if required)",
		"Validate data pipeline performance and accuracy",
	}
	integrationTasks = []string{
		"Develop integration points with existing systems",
		"Create automated testing suite for core functionality",
		"Optimize performance and resource utilization",
		"Conduct internal testing and gather feedback",
	}
	breakdownTasks = []string{
		"Break down remaining complex features into manageable tasks",
		"Implement advanced features with proper documentation",
	}
	polishTasks = []string{
		"Implement remaining features and polish UI/UX",
	}
	midReviewTasks = []string{
		"Document API endpoints and integration guidelines",
		"Conduct mid-project review and adjust timeline if needed",
	}
)

var (
	finalizeTasks = []string{
		"Finalize all features and conduct comprehensive testing",
		"Address all critical bugs and performance issues",
		"Complete technical documentation and user guides",
		"Set up production-ready deployment pipeline",
	}
	scalingTasks = []string{
		"Develop scaling strategy and infrastructure plan",
		"Create monitoring dashboard for key business metrics",
	}
	decisionTasks = []string{
		"Conduct user acceptance testing with stakeholders",
		"Prepare final presentation with results and metrics",
		"Document lessons learned and best practices",
		"Make Go/No-Go decision based on success criteria",
		"If Go: Create detailed roadmap for production rollout",
		"If No-Go: Document findings and recommendations for future initiatives",
	}
)

func firstPhase(c Conditions) []string {
	tasks := append([]string{}, setupTasks...)
	if c.LowDataReadiness {
		tasks = append(tasks, dataAcquisitionTasks...)
	} else {
		tasks = append(tasks, dataAnalysisTasks...)
	}
	if c.HighRisk {
		tasks = append(tasks, feasibilityTasks...)
	}
	return append(tasks, prototypeTasks...)
}

func secondPhase(c Conditions) []string {
	tasks := append([]string{}, refinementTasks...)
	if c.LowDataReadiness {
		tasks = append(tasks, dataValidationTasks...)
	}
	tasks = append(tasks, integrationTasks...)
	if c.HighEffort {
		tasks = append(tasks, breakdownTasks...)
	} else {
		tasks = append(tasks, polishTasks...)
	}
	return append(tasks, midReviewTasks...)
}

func thirdPhase(c Conditions) []string {
	tasks := append([]string{}, finalizeTasks...)
	if c.HighImpact {
		tasks = append(tasks, scalingTasks...)
	}
	return append(tasks, decisionTasks...)
}

func milestones() []Milestone {
	return []Milestone{
		{Day: 10, Title: "Environment & Data Setup", Description: "Development environment ready, initial data pipeline established"},
		{Day: 30, Title: "MVP Checkpoint", Description: "Core prototype completed, technical feasibility validated"},
		{Day: 60, Title: "Feature Complete", Description: "All planned features implemented, integration testing done"},
		{Day: 90, Title: "Go/No-Go Decision", Description: "Final review completed, decision made on production rollout"},
	}
}
