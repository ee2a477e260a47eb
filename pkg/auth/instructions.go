package auth

import (
	"fmt"
	"strings"
)

// ShowCredentialGuide displays step-by-step instructions for setting up
// Discord credentials
func ShowCredentialGuide() {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("📚 DISCORD CREDENTIAL SETUP GUIDE")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()

	fmt.Println("This tool logs into the Discord web client with your email and password")
	fmt.Println("to read the emoji picker. Set up your credentials one of these ways:")
	fmt.Println()

	fmt.Println("🔐 OPTION 1: Store them securely (recommended)")
	fmt.Println("   emojigrab auth login")
	fmt.Println("   - You will be prompted for email and password")
	fmt.Println("   - Credentials land in your system keychain when one is available,")
	fmt.Println("     otherwise in an encrypted file under your config directory")
	fmt.Println()

	fmt.Println("🌱 OPTION 2: Environment variables")
	fmt.Println("   export EMOJIGRAB_EMAIL=\"you@example.com\"")
	fmt.Println("   export EMOJIGRAB_PASSWORD=\"your_password\"")
	fmt.Println("   - Handy for CI and containers, nothing is written to disk")
	fmt.Println()

	fmt.Println("📝 OPTION 3: Config file")
	fmt.Println("   Set discord.email and discord.password in .emojigrab.yaml")
	fmt.Println("   - The file stores the password in plaintext, prefer option 1")
	fmt.Println()

	fmt.Println("🔑 TWO-FACTOR AUTHENTICATION:")
	fmt.Println("   Accounts with 2FA work fine. When Discord asks for a code during")
	fmt.Println("   login, the tool prompts you for it on the terminal.")
	fmt.Println()

	fmt.Println("💡 TIPS:")
	fmt.Println("   • Logging in from an automated browser can trigger Discord's")
	fmt.Println("     verification emails, complete them once and re-run")
	fmt.Println("   • The encrypted store's passphrase can be pinned with")
	fmt.Println("     EMOJIGRAB_PASSPHRASE, otherwise one is generated for you")
	fmt.Println()

	fmt.Println("⚠️  SECURITY WARNING:")
	fmt.Println("   • These credentials give FULL access to your Discord account")
	fmt.Println("   • NEVER share them or commit them to version control")
	fmt.Println("   • Automating a user account is against Discord's ToS, use a")
	fmt.Println("     throwaway account you can afford to lose")
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()
}

// ShowQuickSetupGuide shows a condensed version for experienced users
func ShowQuickSetupGuide() {
	fmt.Println("\n🔐 Quick Setup: emojigrab auth login  (or set EMOJIGRAB_EMAIL / EMOJIGRAB_PASSWORD)")
	fmt.Println("   2FA codes are prompted on the terminal during login")
	fmt.Println("   Run 'emojigrab auth --help' for details")
}
