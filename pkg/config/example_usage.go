package config

// Example usage of the configuration system:
//
// 1. Load configuration with all sources:
//
//     config, err := config.Load("", nil)
//     if err != nil {
//         log.Fatal(err)
//     }
//
// 2. Load with custom config file:
//
//     config, err := config.Load("/path/to/config.yaml", nil)
//     if err != nil {
//         log.Fatal(err)
//     }
//
// 3. Load with command line flags:
//
//     flags := map[string]interface{}{
//         "email": "me@example.com",
//         "output": "./my-emojis",
//         "size": 256,
//         "collections": []string{"Gaming Hub"},
//         "log-level": "debug",
//     }
//     config, err := config.Load("", flags)
//     if err != nil {
//         log.Fatal(err)
//     }
//
// 4. Programmatic configuration:
//
//     config := config.DefaultConfig()
//     config.Discord.Email = "me@example.com"
//     config.Collections = []config.Collection{
//         {Name: "Gaming Hub", Folder: "gaming"},
//     }
//
//     if err := config.Validate(); err != nil {
//         log.Fatal(err)
//     }
//
// 5. Save configuration to file:
//
//     if err := config.Save(".emojigrab.yaml"); err != nil {
//         log.Fatal(err)
//     }
//
// 6. Environment variables:
//
//     export EMOJIGRAB_EMAIL="me@example.com"
//     export EMOJIGRAB_PASSWORD="secret"
//     export EMOJIGRAB_OUTPUT_DIR="./emojis"
//     export EMOJIGRAB_EMOJI_SIZE="512"
//     export EMOJIGRAB_MAX_SCROLL_ROUNDS="50"
//     export EMOJIGRAB_COLLECTIONS="Gaming Hub,Art Corner"
//     export EMOJIGRAB_LOG_LEVEL="debug"
//
// 7. Using configuration in your application:
//
//     // Create CDN client, then pin the configured user agent
//     client := discord.NewClient(30*time.Second, logger.GetLogger())
//     client.SetHeader("User-Agent", config.Discord.UserAgent)
//
//     // Create the browser session
//     session := discord.NewSession(config, logger.GetLogger())
//
//     // Walk the configured collections
//     for _, col := range config.Collections {
//         fmt.Println(col.Name, "->", col.FolderName())
//     }
