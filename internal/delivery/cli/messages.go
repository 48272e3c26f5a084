package cli

const (
	msgCorrect  = "✔️  Corretto!"
	msgWrongFmt = "❌  Sbagliato. La risposta corretta era: %s\n"

	msgLevelPassed = "Complimenti! Hai superato il livello."
	msgLevelFailed = "Non hai raggiunto l'80% di risposte corrette. Prova di nuovo il livello per superarlo."
	// Shown when a replayed, already-passed level is cleared again.
	msgLevelReplayed = "Livello già superato in precedenza: il tuo avanzamento resta invariato."

	msgAllLevelsDone = "\nHai completato tutti i livelli disponibili! Usa la modalità di ripasso per continuare a esercitarti."

	msgNothingToReview = "\nNon hai ancora vocaboli da ripassare. Completa prima almeno un livello."
	msgAlreadyReviewed = "\nHai già eseguito il ripasso oggi. Vuoi ripassare di nuovo? (s/n): "

	msgSaveFailedFmt = "Errore nel salvataggio del progresso: %v\n"
	msgFarewell      = "Auf Wiedersehen! Arrivederci!"
)
