package assistant

import "fmt"

const (
	nonMemberReply = "You are not subscribed to our membership. Please contact support for membership details."

	missingAttachmentReply = "📎 Please attach your resume/CV as a PDF to continue. I need this to send your job application."

	missingInfoReply = "📝 I need a bit more information to send your email:\n\n" +
		"1️⃣ The recipient's email address (e.g., recruiter@company.com)\n" +
		"2️⃣ The email subject (e.g., 'Subject: Application for Python Developer Position')\n" +
		"3️⃣ Your resume/CV as a PDF attachment\n\n" +
		"Please provide any missing information."

	unrecognizedReply = "I'm having trouble understanding your request. Please provide:\n\n" +
		"1. The recipient's email address\n" +
		"2. The email subject\n" +
		"3. Your resume/CV as a PDF attachment"

	downloadErrorReply = "❌ Sorry, I encountered an error downloading your attachment. Please try again."

	sendErrorReply = "❌ Sorry, I encountered an error sending the email. Please try again later."

	storeErrorReply = "Sorry, I encountered an error processing your request. Please try again later."
)

func confirmationReply(recipient string) string {
	return fmt.Sprintf("✅ Email sent successfully to %s!", recipient)
}
