// internal/catalog/tasks.go
package catalog

import (
	"github.com/privguard/progress-engine-be/internal/models"
)

// TaskTemplate adalah satu entri template task 30 hari. Template bersifat
// statis; setiap startChallenge meng-instantiate ulang isinya dengan flag
// completion yang masih kosong.
type TaskTemplate struct {
	ID          string
	Day         int
	Title       string
	Description string
	Difficulty  models.TaskDifficulty
}

// DifficultyPoints memetakan tingkat kesulitan task ke nilai poinnya.
func DifficultyPoints(d models.TaskDifficulty) int {
	switch d {
	case models.DifficultyMedium:
		return 20
	case models.DifficultyHard:
		return 30
	default:
		return 10
	}
}

// ThirtyDayTasks adalah katalog tetap rencana 30 hari: satu task per hari.
var ThirtyDayTasks = []TaskTemplate{
	{ID: "day-01-lock-screen", Day: 1, Title: "Strengthen your lock screen", Description: "Switch to a six digit passcode or a passphrase and enable biometric unlock.", Difficulty: models.DifficultyEasy},
	{ID: "day-02-browser-privacy", Day: 2, Title: "Review browser privacy settings", Description: "Block third-party cookies and disable search and browsing suggestions you do not need.", Difficulty: models.DifficultyEasy},
	{ID: "day-03-email-2fa", Day: 3, Title: "Enable two-factor auth on your email", Description: "Your email account resets every other password. Protect it first.", Difficulty: models.DifficultyMedium},
	{ID: "day-04-app-permissions", Day: 4, Title: "Audit app permissions", Description: "Revoke camera, microphone and contacts access from apps that do not need them.", Difficulty: models.DifficultyEasy},
	{ID: "day-05-password-manager", Day: 5, Title: "Install a password manager", Description: "Pick a password manager and move your five most important accounts into it.", Difficulty: models.DifficultyMedium},
	{ID: "day-06-ad-personalization", Day: 6, Title: "Turn off ad personalization", Description: "Disable personalized ads in your Google and/or Apple account settings.", Difficulty: models.DifficultyEasy},
	{ID: "day-07-password-audit", Day: 7, Title: "Run a full password audit", Description: "Find reused and weak passwords and replace the worst offenders.", Difficulty: models.DifficultyHard},
	{ID: "day-08-clear-cookies", Day: 8, Title: "Clear tracking cookies", Description: "Wipe cookies and site data, keeping only the logins you actually use.", Difficulty: models.DifficultyEasy},
	{ID: "day-09-social-privacy", Day: 9, Title: "Review social media privacy", Description: "Limit who can see your posts, friend list and profile details.", Difficulty: models.DifficultyMedium},
	{ID: "day-10-unsubscribe", Day: 10, Title: "Unsubscribe from unused mailing lists", Description: "Cut ten mailing lists you never read to shrink your exposed inbox surface.", Difficulty: models.DifficultyEasy},
	{ID: "day-11-social-2fa", Day: 11, Title: "Enable 2FA on social accounts", Description: "Add two-factor authentication to your main social media accounts.", Difficulty: models.DifficultyMedium},
	{ID: "day-12-breach-check", Day: 12, Title: "Check for data breaches", Description: "Look up your email addresses in a breach notification service.", Difficulty: models.DifficultyEasy},
	{ID: "day-13-signup-email", Day: 13, Title: "Create a sign-up email alias", Description: "Use a secondary address or alias for newsletters and one-off registrations.", Difficulty: models.DifficultyMedium},
	{ID: "day-14-device-encryption", Day: 14, Title: "Encrypt your device storage", Description: "Verify full-disk encryption is enabled on your laptop and phone.", Difficulty: models.DifficultyHard},
	{ID: "day-15-location-sharing", Day: 15, Title: "Review location sharing", Description: "Turn off precise location for apps that only need a rough area, or nothing at all.", Difficulty: models.DifficultyEasy},
	{ID: "day-16-private-search", Day: 16, Title: "Switch your search engine", Description: "Try a privacy-respecting search engine as your browser default.", Difficulty: models.DifficultyMedium},
	{ID: "day-17-microphone", Day: 17, Title: "Lock down microphone access", Description: "Disable microphone access for every app that has no business listening.", Difficulty: models.DifficultyEasy},
	{ID: "day-18-smart-home", Day: 18, Title: "Review smart-home devices", Description: "Check what your speakers, cameras and TVs record and where it is sent.", Difficulty: models.DifficultyMedium},
	{ID: "day-19-delete-apps", Day: 19, Title: "Delete unused apps", Description: "Remove apps you have not opened in three months, together with their accounts.", Difficulty: models.DifficultyEasy},
	{ID: "day-20-vpn", Day: 20, Title: "Set up a VPN", Description: "Configure a trustworthy VPN for untrusted networks.", Difficulty: models.DifficultyHard},
	{ID: "day-21-financial-alerts", Day: 21, Title: "Enable financial alerts", Description: "Turn on transaction notifications for your bank and credit cards.", Difficulty: models.DifficultyMedium},
	{ID: "day-22-data-brokers", Day: 22, Title: "Start a data broker opt-out", Description: "File removal requests with the two biggest people-search sites that list you.", Difficulty: models.DifficultyEasy},
	{ID: "day-23-home-wifi", Day: 23, Title: "Secure your home Wi-Fi", Description: "Change the router admin password and make sure WPA2/WPA3 is enabled.", Difficulty: models.DifficultyMedium},
	{ID: "day-24-extensions", Day: 24, Title: "Review browser extensions", Description: "Remove extensions you do not recognize or no longer use.", Difficulty: models.DifficultyEasy},
	{ID: "day-25-encrypted-messaging", Day: 25, Title: "Set up encrypted messaging", Description: "Move one regular conversation to an end-to-end encrypted messenger.", Difficulty: models.DifficultyMedium},
	{ID: "day-26-shared-links", Day: 26, Title: "Review cloud sharing links", Description: "Revoke public links to old documents and photo albums you no longer share.", Difficulty: models.DifficultyEasy},
	{ID: "day-27-offline-backup", Day: 27, Title: "Create an offline backup", Description: "Back up your key files to an encrypted external drive kept offline.", Difficulty: models.DifficultyHard},
	{ID: "day-28-credit-freeze", Day: 28, Title: "Freeze your credit report", Description: "Place a security freeze with the credit bureaus that operate in your country.", Difficulty: models.DifficultyMedium},
	{ID: "day-29-lock-notifications", Day: 29, Title: "Hide lock-screen previews", Description: "Stop message contents from showing on your lock screen.", Difficulty: models.DifficultyEasy},
	{ID: "day-30-privacy-checkup", Day: 30, Title: "Run a full privacy checkup", Description: "Walk through the privacy checkup of every major account you own.", Difficulty: models.DifficultyHard},
}

// InstantiateTasks membangun baris DailyTask segar dari template untuk satu
// challenge. Konten idempotent, flag completion selalu mulai dari false.
func InstantiateTasks(challengeID string) []models.DailyTask {
	tasks := make([]models.DailyTask, 0, len(ThirtyDayTasks))
	for _, tpl := range ThirtyDayTasks {
		tasks = append(tasks, models.DailyTask{
			ChallengeID: challengeID,
			TaskID:      tpl.ID,
			Day:         tpl.Day,
			Title:       tpl.Title,
			Description: tpl.Description,
			Difficulty:  tpl.Difficulty,
		})
	}
	return tasks
}
