package server

type WebhookTargetForTest = webhookTarget

func GithubEventToTargetForTest(event any) *WebhookTargetForTest {
	return githubEventToTarget(event)
}

const MaskedAPIKeyForTest = maskedAPIKey
