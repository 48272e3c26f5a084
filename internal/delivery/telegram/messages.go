package telegram

const (
	msgWelcome = "👋 <b>Willkommen!</b>\n\n" +
		"Questo bot ti insegna il tedesco del magazzino: livelli progressivi di " +
		"vocaboli e grammatica, con ripasso giornaliero di tutto quello che hai imparato.\n\n" +
		"Comandi:\n" +
		"/livello – inizia il livello attuale\n" +
		"/ripasso – ripasso giornaliero\n" +
		"/progressi – i tuoi progressi\n" +
		"/aiuto – aiuto"

	msgHelp = "Supera un livello rispondendo correttamente ad almeno l'80% delle domande: " +
		"sbloccherai il livello successivo e i suoi vocaboli entreranno nel ripasso.\n\n" +
		"Il ripasso pesca da tutto quello che hai imparato e conta una volta al giorno; " +
		"puoi comunque ripeterlo quante volte vuoi per esercitarti."

	msgCorrect  = "✔️ <b>Corretto!</b>"
	msgWrongFmt = "❌ <b>Sbagliato.</b> La risposta corretta era: <b>%s</b>"

	msgLevelPassedFmt = "🎉 Complimenti! Hai superato il livello con il %d%% di risposte corrette."
	msgLevelFailedFmt = "Hai risposto correttamente al %d%% delle domande.\n" +
		"Serve almeno l'80%%: prova di nuovo il livello per superarlo."

	msgAllLevelsDone = "🏁 Hai completato tutti i livelli disponibili! Usa /ripasso per continuare a esercitarti."

	msgReviewIntro        = "🔁 <b>Ripasso</b>\n\nDomande su tutto quello che hai imparato finora."
	msgReviewPracticeOnly = "🔁 <b>Ripasso</b>\n\nHai già completato il ripasso di oggi: " +
		"questa sessione vale solo come esercizio."
	msgReviewDoneFmt    = "Ripasso completato: %d%% di risposte corrette."
	msgReviewNotCounted = "ℹ️ Il ripasso di oggi era già stato conteggiato."

	msgNothingToReview = "Non hai ancora vocaboli da ripassare. Completa prima almeno un livello con /livello."

	msgNoActiveSession = "Nessuna sessione in corso. Usa /livello o /ripasso per iniziare."
	msgInternalError   = "Si è verificato un errore, riprova tra poco."
	msgSaveFailed      = "⚠️ Non sono riuscito a salvare i tuoi progressi, il risultato di questa sessione potrebbe andare perso. Riprova più tardi."

	msgUnknownCommand = "Comando sconosciuto. Usa /aiuto per l'elenco dei comandi."
)
